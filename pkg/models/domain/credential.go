package domain

import "fmt"

// Credential pairs a claim API bearer token with the client label its claims
// are reported under.
type Credential struct {
	Client string
	Token  string
}

func (c Credential) String() string {
	return fmt.Sprintf("%s:%s", c.Client, maskToken(c.Token))
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
