package stream

// Record types. The high byte is the record kind, the low byte its data
// type.
const (
	recHeader   uint16 = 0x0002
	recBgnLib   uint16 = 0x0102
	recLibName  uint16 = 0x0206
	recUnits    uint16 = 0x0305
	recEndLib   uint16 = 0x0400
	recBgnStr   uint16 = 0x0502
	recStrName  uint16 = 0x0606
	recEndStr   uint16 = 0x0700
	recBoundary uint16 = 0x0800
	recText     uint16 = 0x0C00
	recLayer    uint16 = 0x0D02
	recDatatype uint16 = 0x0E02
	recXY       uint16 = 0x1003
	recEndEl    uint16 = 0x1100
	recTexttype uint16 = 0x1602
	recString   uint16 = 0x1906
)

// Version is the stream format version written in HEADER.
const Version = 600

// maxRecord is the largest record the format can express.
const maxRecord = 0xFFFF
