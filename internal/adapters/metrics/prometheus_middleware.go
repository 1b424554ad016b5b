package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/armor-tracker/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every request
// sent through the mediator, labelled with the bare request type name
// ("*commands.QuickUpgradeCommand" is recorded as "QuickUpgradeCommand").
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(requestName(request), time.Since(start).Seconds(), err)
		return response, err
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "Unknown"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
