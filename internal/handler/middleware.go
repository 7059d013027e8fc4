package handler

import (
	"fmt"
	"net/http"
	"strings"

	"document-redaction-api/internal/domain"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/urfave/negroni"
)

// accessLogger lets negroni write through the application logger
type accessLogger struct {
	logger domain.Logger
}

func (l accessLogger) Println(v ...interface{}) {
	l.logger.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l accessLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

// NewMiddlewareStack wraps the router with panic recovery, access logging
// and error reporting. Sentry re-panics so negroni still answers 500.
func NewMiddlewareStack(router http.Handler, logger domain.Logger) http.Handler {
	recovery := negroni.NewRecovery()
	recovery.Logger = accessLogger{logger: logger}
	recovery.PrintStack = false

	requestLogger := negroni.NewLogger()
	requestLogger.ALogger = accessLogger{logger: logger}

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})

	n := negroni.New()
	n.Use(recovery)
	n.Use(requestLogger)
	n.UseHandler(sentryHandler.Handle(router))
	return n
}
