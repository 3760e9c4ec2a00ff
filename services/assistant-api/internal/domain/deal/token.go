package deal

import (
	"fmt"
	"hash/fnv"
)

const tokenModulus = 99999

// CustomerToken derives the anonymous customer token for a new deal. The
// hash is deterministic and non-cryptographic; the token is a display
// handle, not a secret.
func CustomerToken(userID, message string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	return fmt.Sprintf("CST-%s-%d", userID, h.Sum32()%tokenModulus)
}
