package packet

// Client → server.
const (
	C_OPCODE_HELLO         byte = 0x01
	C_OPCODE_POINTER       byte = 0x02
	C_OPCODE_POINTER_LEAVE byte = 0x03
	C_OPCODE_RESIZE        byte = 0x04
	C_OPCODE_CAMERA        byte = 0x05
)

// Server → client.
const (
	S_OPCODE_WELCOME byte = 0x81
	S_OPCODE_UI_TEXT byte = 0x82
)

// ProtocolVersion is sent in WELCOME.
const ProtocolVersion int32 = 1
