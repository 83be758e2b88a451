// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

package services

import (
	"context"
	"time"
)

// CatalogBuilder matches topics.Catalog's rebuild method.
type CatalogBuilder interface {
	Build(ctx context.Context) error
}

// CatalogService keeps the topic catalog fresh by rebuilding it on every
// interval tick. The initial build happens at startup before the
// supervisor runs, so a zero interval just idles until shutdown. A failed
// rebuild is returned to the supervisor, which restarts the service with
// backoff while the previously published snapshot keeps serving.
type CatalogService struct {
	catalog  CatalogBuilder
	interval time.Duration
}

// NewCatalogService creates the catalog refresh service. interval <= 0
// disables periodic rebuilds.
func NewCatalogService(catalog CatalogBuilder, interval time.Duration) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		interval: interval,
	}
}

// Serve implements suture.Service.
func (c *CatalogService) Serve(ctx context.Context) error {
	if c.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.catalog.Build(ctx); err != nil {
				return err
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (c *CatalogService) String() string {
	return "catalog-refresh"
}
