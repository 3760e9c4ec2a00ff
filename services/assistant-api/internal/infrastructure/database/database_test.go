package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"dealermate"`, quoteIdentifier("dealermate"))
	assert.Equal(t, `"we""ird"`, quoteIdentifier(`we"ird`))
}

func TestEnsureDatabaseExistsSkipsWithoutConnecting(t *testing.T) {
	for _, dsn := range []string{
		"host=localhost user=dm dbname=dealermate sslmode=disable",
		"postgres://dm:pw@127.0.0.1:1/postgres?sslmode=disable",
		"postgres://dm:pw@127.0.0.1:1?sslmode=disable",
	} {
		assert.NoError(t, ensureDatabaseExists(context.Background(), dsn), dsn)
	}
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), Config{DSN: "  "})
	assert.ErrorContains(t, err, "DSN is empty")
}
