package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"buddyai-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, message string, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func TestInstrumentProvider_CountsOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(providerCalls.WithLabelValues("fake", "success"))
	errBefore := testutil.ToFloat64(providerCalls.WithLabelValues("fake", "error"))

	p := InstrumentProvider(&fakeProvider{reply: "hi"})
	reply, err := p.Chat(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)
	assert.Equal(t, "fake", p.Name())

	failing := InstrumentProvider(&fakeProvider{err: errors.New("boom")})
	_, err = failing.Generate(context.Background(), "hello")
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(providerCalls.WithLabelValues("fake", "success")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(providerCalls.WithLabelValues("fake", "error")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())
	app.Get("/things/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "200"))

	res, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "200")))

	res, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "buddyai_http_requests_total")
}
