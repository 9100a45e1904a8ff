package search

import "github.com/kitbuilder587/webagent/internal/config"

// KeyChain собирает упорядоченный список ключей для запроса:
// явный primary, иначе ключ из конфига; затем fallback (явный, иначе
// из конфига), если fallback включён. Дубликат primary не добавляется,
// второй заход тем же ключом бессмысленен.
func KeyChain(primary, fallback string, defaults config.SerperConfig, useFallback bool) []string {
	var keys []string

	if primary != "" {
		keys = append(keys, primary)
	} else if defaults.APIKey != "" {
		keys = append(keys, defaults.APIKey)
	}

	fb := fallback
	if fb == "" {
		fb = defaults.FallbackAPIKey
	}
	if useFallback && fb != "" && !contains(keys, fb) {
		keys = append(keys, fb)
	}

	return keys
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
