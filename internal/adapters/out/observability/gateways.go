package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/core/ports"
)

const tracerName = "marketplace/internal/adapters/out/observability"

type Option func(*instrumentation)

func WithLogger(logger *slog.Logger) Option {
	return func(i *instrumentation) { i.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(i *instrumentation) { i.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(i *instrumentation) { i.metrics = newGatewayMetrics(m) }
}

type instrumentation struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics gatewayMetrics
}

func newInstrumentation(opts []Option) instrumentation {
	i := instrumentation{
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&i)
		}
	}
	if i.tracer == nil {
		i.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return i
}

// observe finishes a gateway call: it records the outcome on the span and the
// call counter, and logs failures.
func (i instrumentation) observe(ctx context.Context, span trace.Span, operation string, err error, attrs ...slog.Attr) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		attrs = append(attrs, slog.String("operation", operation), slog.String("error", err.Error()))
		i.logger.LogAttrs(ctx, slog.LevelError, "marketplace call failed", attrs...)
	}
	i.metrics.recordCall(ctx, operation, outcome)
}

// OrderGateway decorates ports.OrderGateway with tracing, logging and metrics.
type OrderGateway struct {
	inner ports.OrderGateway
	instrumentation
}

func NewOrderGateway(inner ports.OrderGateway, opts ...Option) *OrderGateway {
	return &OrderGateway{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (g *OrderGateway) ListProducerOrders(ctx context.Context) ([]*order.Order, error) {
	const op = "OrderGateway.ListProducerOrders"
	ctx, span := g.tracer.Start(ctx, op)
	defer span.End()

	orders, err := g.inner.ListProducerOrders(ctx)
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	g.observe(ctx, span, op, err)
	return orders, err
}

func (g *OrderGateway) UpdateOrderStatus(ctx context.Context, id kernel.ID, status order.Status) (*order.Order, error) {
	const op = "OrderGateway.UpdateOrderStatus"
	ctx, span := g.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.Int64("order.id", id.Int64()),
		attribute.String("order.status", status.String()),
	))
	defer span.End()

	updated, err := g.inner.UpdateOrderStatus(ctx, id, status)
	g.observe(ctx, span, op, err, slog.Int64("order_id", id.Int64()), slog.String("status", status.String()))
	if err == nil {
		g.logger.InfoContext(ctx, "order status updated", "order_id", id.Int64(), "status", status.String())
	}
	return updated, err
}

// ProductGateway decorates ports.ProductGateway with tracing, logging and metrics.
type ProductGateway struct {
	inner ports.ProductGateway
	instrumentation
}

func NewProductGateway(inner ports.ProductGateway, opts ...Option) *ProductGateway {
	return &ProductGateway{inner: inner, instrumentation: newInstrumentation(opts)}
}

func (g *ProductGateway) ListPendingGroups(
	ctx context.Context,
	req query.PageRequest,
	sort query.SortDescriptor,
) (query.Page[product.PendingGroup], error) {
	const op = "ProductGateway.ListPendingGroups"
	ctx, span := g.tracer.Start(ctx, op, trace.WithAttributes(pageAttributes(req, sort)...))
	defer span.End()

	page, err := g.inner.ListPendingGroups(ctx, req, sort)
	span.SetAttributes(attribute.Int("page.items", len(page.Items)))
	g.observe(ctx, span, op, err, slog.Int("page", req.Index))
	return page, err
}

func (g *ProductGateway) ListMyProducts(
	ctx context.Context,
	req query.PageRequest,
	sort query.SortDescriptor,
) (query.Page[*product.Product], error) {
	const op = "ProductGateway.ListMyProducts"
	ctx, span := g.tracer.Start(ctx, op, trace.WithAttributes(pageAttributes(req, sort)...))
	defer span.End()

	page, err := g.inner.ListMyProducts(ctx, req, sort)
	span.SetAttributes(attribute.Int("page.items", len(page.Items)))
	g.observe(ctx, span, op, err, slog.Int("page", req.Index))
	return page, err
}

func (g *ProductGateway) ApproveProduct(ctx context.Context, id kernel.ID) (*product.Product, error) {
	const op = "ProductGateway.ApproveProduct"
	ctx, span := g.tracer.Start(ctx, op, trace.WithAttributes(attribute.Int64("product.id", id.Int64())))
	defer span.End()

	approved, err := g.inner.ApproveProduct(ctx, id)
	g.observe(ctx, span, op, err, slog.Int64("product_id", id.Int64()))
	if err == nil {
		g.logger.InfoContext(ctx, "product approved", "product_id", id.Int64())
	}
	return approved, err
}

func (g *ProductGateway) DeclineProduct(
	ctx context.Context,
	id kernel.ID,
	reason product.DeclineReason,
) (*product.Product, error) {
	const op = "ProductGateway.DeclineProduct"
	ctx, span := g.tracer.Start(ctx, op, trace.WithAttributes(attribute.Int64("product.id", id.Int64())))
	defer span.End()

	declined, err := g.inner.DeclineProduct(ctx, id, reason)
	g.observe(ctx, span, op, err, slog.Int64("product_id", id.Int64()))
	if err == nil {
		g.logger.InfoContext(ctx, "product declined", "product_id", id.Int64())
	}
	return declined, err
}

func pageAttributes(req query.PageRequest, sort query.SortDescriptor) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int("page.index", req.Index),
		attribute.Int("page.size", req.Size),
	}
	if sort.Field != "" {
		attrs = append(attrs,
			attribute.String("sort.field", sort.Field),
			attribute.String("sort.direction", sort.Direction.String()),
		)
	}
	return attrs
}

type gatewayMetrics struct {
	calls metric.Int64Counter
}

func newGatewayMetrics(m metric.Meter) gatewayMetrics {
	if m == nil {
		return gatewayMetrics{}
	}
	calls, _ := m.Int64Counter("marketplace.gateway.calls", metric.WithDescription("Number of marketplace API calls"))
	return gatewayMetrics{calls: calls}
}

func (m gatewayMetrics) recordCall(ctx context.Context, operation, outcome string) {
	if m.calls != nil {
		m.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}
}

var (
	_ ports.OrderGateway   = (*OrderGateway)(nil)
	_ ports.ProductGateway = (*ProductGateway)(nil)
)
