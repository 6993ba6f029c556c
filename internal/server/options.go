package server

import "time"

// Options configures server creation.
type Options struct {
	// StorageDir roots the temporary upload workspace. Defaults to the
	// system temp directory.
	StorageDir string
	// ResolveTimeout bounds the host interface query made once at startup.
	ResolveTimeout time.Duration
	// MaxUploadBytes caps multipart upload memory. Defaults to 512 MiB.
	MaxUploadBytes int64
}

func (o Options) withDefaults() Options {
	if o.ResolveTimeout <= 0 {
		o.ResolveTimeout = 5 * time.Second
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 512 << 20
	}
	return o
}
