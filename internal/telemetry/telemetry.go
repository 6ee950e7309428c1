// Package telemetry はOpenTelemetryのトレースプロバイダーを設定します。
//
// 有効にした場合、spanは標準出力にJSONで書き出されます。
// ワークショップでリクエストの流れを確認するためのもので、外部のコレクターは使いません。
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc はプロバイダーを停止し、残っているspanを書き出す
type ShutdownFunc func(ctx context.Context) error

// Setup はトレースプロバイダーをグローバルに登録する
// enabled が false の場合は何もせず、何もしない ShutdownFunc を返す
func Setup(enabled bool, serviceName string, w io.Writer) (ShutdownFunc, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("トレースエクスポーターの作成に失敗: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
