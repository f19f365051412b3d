package storage

import "go.uber.org/fx"

func NewStorageModule() fx.Option {
	return fx.Provide(
		newConfig,
		NewOpener,
	)
}
