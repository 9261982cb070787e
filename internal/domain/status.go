package domain

// StatusName maps an HTTP status code to the name shown in reports.
// Codes outside the table are all reported as "Unknown".
func StatusName(code int) string {
	switch code {
	case 200:
		return "OK"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}
