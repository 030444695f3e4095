package validators

import (
	"net/mail"
	"strings"
)

func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return false
	}

	return strings.Contains(addr.Address[at+1:], ".")
}
