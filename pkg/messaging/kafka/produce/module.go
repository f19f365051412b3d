package produce

import "go.uber.org/fx"

func NewProduceModule() fx.Option {
	return fx.Options(
		NewProduceConfigModule(),
		fx.Provide(NewTask),
	)
}
