// Package videourl приводит ссылки на видео к прямым адресам загрузки.
package videourl

import (
	"net/url"
	"regexp"
	"strings"
)

var driveFileID = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

const driveDownload = "https://drive.google.com/uc?export=download&id="

// Resolve возвращает прямую ссылку на файл. Ссылки «поделиться» Google Drive
// вида https://drive.google.com/file/d/<id>/view переписываются на эндпоинт загрузки,
// ссылки вида ...?id=<id> тоже. Остальные адреса возвращаются без изменений.
func Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !isDrive(u.Host) {
		return raw
	}
	if m := driveFileID.FindStringSubmatch(u.Path); m != nil {
		return driveDownload + m[1]
	}
	if id := u.Query().Get("id"); id != "" {
		return driveDownload + url.QueryEscape(id)
	}
	return raw
}

func isDrive(host string) bool {
	host = strings.ToLower(host)
	return host == "drive.google.com" || host == "docs.google.com"
}
