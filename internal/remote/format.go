package remote

import "fmt"

// CheckFormat reports whether format is a usable lookup path template:
// exactly one %s placeholder, with %% as the only other allowed escape.
func CheckFormat(format string) error {
	placeholders := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 >= len(format) {
			return fmt.Errorf("path format %q ends with a lone '%%'", format)
		}

		switch format[i+1] {
		case '%':
		case 's':
			placeholders++
		default:
			return fmt.Errorf("path format %q: unsupported verb %%%c", format, format[i+1])
		}
		i++
	}

	if placeholders != 1 {
		return fmt.Errorf("path format %q must contain exactly one %%s placeholder, found %d", format, placeholders)
	}

	return nil
}

// BuildPath substitutes assetPath into the placeholder of format.
// assetPath is inserted verbatim; callers must pass identifiers that are
// already safe to use as a URL path.
func BuildPath(format, assetPath string) string {
	return fmt.Sprintf(format, assetPath)
}

// BuildURL joins the server address and the substituted path without
// normalizing either side.
func BuildURL(serverURL, format, assetPath string) string {
	return serverURL + BuildPath(format, assetPath)
}
