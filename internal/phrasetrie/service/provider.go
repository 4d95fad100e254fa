package service

import "github.com/google/wire"

// ProviderSet is a Wire provider set for the ingest service
var ProviderSet = wire.NewSet(NewIngester)
