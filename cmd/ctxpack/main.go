package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/ctxpack/internal/cli"
	"github.com/temirov/ctxpack/internal/utils"
)

// main is the entry point for the ctxpack command.
func main() {
	logLevel := zap.NewAtomicLevel()
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() {
		if utils.StderrSupportsSync() {
			_ = loggerInstance.Sync()
		}
	}()
	dependencies := cli.Dependencies{Logger: loggerInstance, LogLevel: &logLevel}
	if applicationExecutionError := cli.Execute(dependencies); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage, zap.Error(applicationExecutionError))
	}
}
