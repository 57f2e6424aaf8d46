package neo4j

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/chain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// mapError folds driver failures onto the pipeline taxonomy:
// constraint violations are fatal data-model bugs, server errors the
// driver marks retriable and connectivity failures are transient, and
// anything else surfaces unchanged so it fails the run visibly.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		if strings.Contains(neoErr.Code, "ConstraintValidationFailed") {
			return fmt.Errorf("%w: %s", chain.ErrConstraintViolation, neoErr.Msg)
		}
		if neoErr.IsRetriable() {
			return fmt.Errorf("%w: %v", chain.ErrStoreUnavailable, err)
		}
		return err
	}

	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", chain.ErrStoreUnavailable, err)
	}
	return err
}
