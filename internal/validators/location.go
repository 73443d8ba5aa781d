package validators

// IsValidCoordinates checks a (longitude, latitude) pair against the
// WGS84 value ranges.
func IsValidCoordinates(longitude, latitude float64) bool {
	if longitude < -180 || longitude > 180 {
		return false
	}
	if latitude < -90 || latitude > 90 {
		return false
	}
	return true
}
