package ports

// Logger define a interface para logging estruturado (pares chave/valor)
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
	// Sync descarrega buffers pendentes
	Sync() error
}
