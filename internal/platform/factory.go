package platform

import (
	"context"

	"github.com/aretw0/notes/pkg/core"
)

// New opens the notes file at path and returns a loaded service.
//
//	svc, err := notes.New("./notes.txt", notes.WithVersioning(false))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	serviceOpts := []core.ServiceOption{
		core.WithServiceLogger(o.logger),
		core.WithBufferOptions(o.bufferOptions),
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		serviceOpts = append(serviceOpts, core.WithEventBufferSize(size))
	}

	service := core.NewService(repo, serviceOpts...)
	if err := service.Load(context.Background()); err != nil {
		return nil, err
	}
	return service, nil
}
