package ds1338

// ToBCD packs a two digit decimal value, one digit per nibble.
func ToBCD(x int) byte {
	return byte(x/10)<<4 | byte(x%10)
}

// FromBCD unpacks a two digit decimal value.
func FromBCD(x byte) int {
	return int(x>>4)*10 + int(x&0x0f)
}
