package handler

import (
	"net/http"
	"sync"

	"clinic/config"
	"clinic/di"
	"clinic/shared/logger"
	httpTransport "clinic/transport/http"
)

var (
	once    sync.Once
	service *httpTransport.HTTP
)

// Handler is the serverless entrypoint. The dependency graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
