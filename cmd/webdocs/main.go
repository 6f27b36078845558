package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/skykauf/fivb-leaderboard/internal/config"
	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
)

// webdocs is a small same-origin proxy in front of the VIS endpoint so its
// operations can be explored from a browser console without CORS errors.
// It carries no pipeline logic.
func main() {
	cfg, err := config.LoadWebDocs()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() {
		_ = logger.Sync()
	}()

	upstream := &fasthttp.Client{
		ReadTimeout:  cfg.VISTimeout,
		WriteTimeout: cfg.VISTimeout,
	}

	handler := func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		switch string(ctx.Path()) {
		case "/":
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("POST /vis with a VIS <Request .../> envelope body; the response is proxied verbatim.\n")
		case "/vis":
			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}
			proxyVIS(ctx, upstream, cfg.VISBaseURL, logger)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}

	server := &fasthttp.Server{
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.VISTimeout + 10*time.Second,
		Name:         "fivb-webdocs",
	}

	go func() {
		logger.Info("webdocs proxy starting", "addr", cfg.Addr, "upstream", cfg.VISBaseURL)
		if err := server.ListenAndServe(cfg.Addr); err != nil {
			logger.Error("webdocs proxy failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := server.Shutdown(); err != nil {
		logger.Error("webdocs shutdown failed", "error", err)
	}
	logger.Info("webdocs proxy stopped")
}

func proxyVIS(ctx *fasthttp.RequestCtx, upstream *fasthttp.Client, baseURL string, logger *logging.Logger) {
	envelope := ctx.PostBody()
	if len(envelope) == 0 {
		envelope = ctx.QueryArgs().Peek("request")
	}
	if len(envelope) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetBodyString("missing request envelope (POST body or ?request=)")
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/xml; charset=utf-8")
	accept := ctx.Request.Header.Peek("Accept")
	if len(accept) == 0 {
		accept = []byte("application/json")
	}
	req.Header.SetBytesV("Accept", accept)
	req.SetBody(envelope)

	if err := upstream.Do(req, resp); err != nil {
		logger.Warn("vis proxy request failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		ctx.SetBodyString("upstream request failed")
		return
	}

	ctx.SetStatusCode(resp.StatusCode())
	ctx.SetContentTypeBytes(resp.Header.ContentType())
	ctx.SetBody(resp.Body())
}
