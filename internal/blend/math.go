package blend

// mulDiv255 computes a*b/255 with rounding.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + t>>8) >> 8)
}

// addDiv255 adds two values, saturating at 255.
func addDiv255(a, b byte) byte {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return byte(s)
}

// Lerp interpolates from d toward r by coverage c in [0, 255].
func Lerp(d, r, c byte) byte {
	if c == 255 {
		return r
	}
	if c == 0 {
		return d
	}
	return addDiv255(mulDiv255(r, c), mulDiv255(d, 255-c))
}
