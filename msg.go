package winhost

// MessageCode identifies a routed window system message. The values match
// the Win32 message numbers so the native layer forwards without a
// translation table; the controller only ever inspects the three below and
// reports everything else as unhandled.
type MessageCode uint32

const (
	MsgSize    MessageCode = 0x0005
	MsgDestroy MessageCode = 0x0002
	MsgPaint   MessageCode = 0x000F
)

// Loword extracts the low 16 bits of a packed word-pair. Size-change
// notifications deliver the new client width this way.
func Loword(v uint32) uint16 {
	return uint16(v & 0xffff)
}

// Hiword extracts the high 16 bits of a packed word-pair (the new client
// height in a size-change notification).
func Hiword(v uint32) uint16 {
	return uint16((v >> 16) & 0xffff)
}
