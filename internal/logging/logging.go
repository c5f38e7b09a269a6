package logging

import "go.uber.org/zap"

// New builds the process logger. Development gets the console encoder,
// everything else JSON at info level.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
