package meta

import (
	"context"
	"sync"
)

var (
	serviceName    string    //nolint:gochecknoglobals // set once at startup by the binary
	serviceVersion string    //nolint:gochecknoglobals // set once at startup by the binary
	once           sync.Once //nolint:gochecknoglobals // ensures SetServiceInfo is called once
)

// SetServiceInfo sets the global service name and version.
// Subsequent calls are ignored.
func SetServiceInfo(name, version string) {
	once.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// GetServiceName returns the global service name.
func GetServiceName() string {
	return serviceName
}

// GetServiceVersion returns the global service version.
func GetServiceVersion() string {
	return serviceVersion
}

// WithService stamps the global service info onto ctx.
func WithService(ctx context.Context) context.Context {
	return InjectMetaToContext(ctx, map[ContextKey]string{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	})
}
