package codec

import "encoding/binary"

// Output report sizes, per the command table.
const (
	CommandReportSize = 513
	ImageReportSize   = 1025

	// ImageChunkSize is the payload carried by one image data packet.
	ImageChunkSize = ImageReportSize - 1
)

// Header mnemonics. Byte 0 of every command report is reserved (0x00); the
// three-letter "CRT" prelude and one of these mnemonics follow at byte 1.
const (
	mnemonicWake             = "DIS"
	mnemonicRefresh          = "STP"
	mnemonicBrightness       = "LIG"
	mnemonicClear            = "CLE"
	mnemonicBackgroundImage  = "LOG"
	mnemonicZoneImage        = "IMG" // not present in the original source; chosen to match the other mnemonics' naming style
	clearAllZoneByte         = 0xFF
	backgroundImageFinalByte = 0x01
)

func newCommandBuffer() [CommandReportSize]byte {
	var buf [CommandReportSize]byte
	buf[0] = 0x00
	copy(buf[1:], "CRT")
	return buf
}

func writeMnemonic(buf []byte, offset int, mnemonic string) {
	copy(buf[offset:], []byte{0, 0})
	copy(buf[offset+2:], mnemonic)
}

// EncodeWakeScreen builds the "wake screen" command report.
func EncodeWakeScreen() [CommandReportSize]byte {
	buf := newCommandBuffer()
	writeMnemonic(buf[:], 4, mnemonicWake)
	return buf
}

// EncodeRefresh builds the "refresh" command report that flushes pending
// display changes to the screen.
func EncodeRefresh() [CommandReportSize]byte {
	buf := newCommandBuffer()
	writeMnemonic(buf[:], 4, mnemonicRefresh)
	return buf
}

// EncodeSetBrightness builds the "set brightness" command report. The
// caller is responsible for clamping b to 0..=100; this function writes
// whatever byte it is given verbatim so callers can observe the exact wire
// value under test.
func EncodeSetBrightness(b byte) [CommandReportSize]byte {
	buf := newCommandBuffer()
	writeMnemonic(buf[:], 4, mnemonicBrightness)
	buf[11] = b
	return buf
}

// EncodeClearAllImages builds the "clear all display zone images" command.
func EncodeClearAllImages() [CommandReportSize]byte {
	buf := newCommandBuffer()
	writeMnemonic(buf[:], 4, mnemonicClear)
	buf[12] = clearAllZoneByte
	return buf
}

// EncodeClearZoneImage builds the "clear one display zone image" command
// for the given wire zone id.
func EncodeClearZoneImage(zoneID byte) [CommandReportSize]byte {
	buf := newCommandBuffer()
	writeMnemonic(buf[:], 4, mnemonicClear)
	buf[12] = zoneID
	return buf
}

func newImageBuffer() [ImageReportSize]byte {
	var buf [ImageReportSize]byte
	buf[0] = 0x00
	copy(buf[1:], "CRT")
	return buf
}

// EncodeInitiateBackgroundImage builds the two-phase upload's initiation
// report for the full-screen boot logo image.
func EncodeInitiateBackgroundImage(size uint32) [ImageReportSize]byte {
	buf := newImageBuffer()
	writeMnemonic(buf[:], 4, mnemonicBackgroundImage)
	binary.BigEndian.PutUint32(buf[9:13], size)
	buf[13] = backgroundImageFinalByte
	return buf
}

// EncodeInitiateZoneImage builds the two-phase upload's initiation report
// for a single display zone.
func EncodeInitiateZoneImage(size uint32, zoneID byte) [ImageReportSize]byte {
	buf := newImageBuffer()
	writeMnemonic(buf[:], 4, mnemonicZoneImage)
	binary.BigEndian.PutUint32(buf[9:13], size)
	buf[13] = zoneID
	return buf
}

// EncodeImageDataPacket builds one image-upload data packet report. chunk
// must be at most ImageChunkSize bytes; a short final chunk is zero-padded.
func EncodeImageDataPacket(chunk []byte) [ImageReportSize]byte {
	var buf [ImageReportSize]byte
	buf[0] = 0x00
	n := copy(buf[1:], chunk)
	_ = n
	return buf
}
