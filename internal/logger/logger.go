package logger

import "go.uber.org/zap"

func New(env string) *zap.Logger {
	if env == "production" {
		l, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return l
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}
