package parser

import (
	"regexp"
	"strings"

	"github.com/lysyi3m/radio-guiones/app/records"
)

var userLine = regexp.MustCompile(`^\s*Nombre completo:\s*(.+?),\s*Nombre de usuario:\s*(.+?),\s*N[úu]mero de m[óo]vil:\s*(.*?),\s*Contrase[ñn]a:\s*(.+?)\s*$`)

// ParseUsers reads one account per line. Imported accounts are workers
// classified as plain users.
func ParseUsers(raw string) Result[records.User] {
	var result Result[records.User]

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := userLine.FindStringSubmatch(line)
		if m == nil {
			result.Skipped++
			continue
		}

		user := records.User{
			Name:           strings.TrimSpace(m[1]),
			Username:       strings.TrimSpace(m[2]),
			Mobile:         strings.TrimSpace(m[3]),
			Password:       m[4],
			Role:           records.RoleWorker,
			Classification: records.ClassUser,
		}
		if user.Mobile == "" {
			result.WithDefaults++
		}
		result.Records = append(result.Records, user)
	}

	return result
}
