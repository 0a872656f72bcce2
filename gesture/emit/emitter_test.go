package emit

// compile-time interface satisfaction checks.
var (
	_ Emitter = (*NullEmitter)(nil)
	_ Emitter = (*BufferedEmitter)(nil)
	_ Emitter = (*LogEmitter)(nil)
	_ Emitter = (*OTelEmitter)(nil)
)
