package logging

// TeeWriter fans one entity out to several writers in order. Writers must not
// keep the entity, it is recycled once Write returns.
type TeeWriter struct {
	writers []LogWriter
}

func (tw *TeeWriter) Write(entity *LogEntity) {
	for _, w := range tw.writers {
		w.Write(entity)
	}
}

// NewTeeWriter drops nil and noop writers and inlines nested tees.
func NewTeeWriter(writers ...LogWriter) LogWriter {
	flat := make([]LogWriter, 0, len(writers))
	for _, w := range writers {
		switch typed := w.(type) {
		case nil, NoopWriter:
			continue
		case *TeeWriter:
			flat = append(flat, typed.writers...)
		default:
			flat = append(flat, w)
		}
	}
	if len(flat) == 0 {
		return NewNoopWriter()
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &TeeWriter{flat}
}
