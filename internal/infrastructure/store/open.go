// Package store elige el adaptador de persistencia según STORE_CREDENTIALS_JSON.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kits-invoicing/internal/domain/repository"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/memory"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/mongodb"
	"github.com/jhoicas/kits-invoicing/internal/infrastructure/postgres"
	"github.com/jhoicas/kits-invoicing/pkg/config"
)

// Store almacén de documentos más contador atómico de numeración.
type Store interface {
	repository.InvoiceStore
	repository.SequenceStore
}

// Open conecta el almacén configurado. close libera conexiones; nunca es nil.
func Open(ctx context.Context, creds config.StoreCredentials) (Store, func(), error) {
	switch creds.Driver {
	case config.DriverMemory:
		return memory.NewInvoiceStore(), func() {}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, creds.DB())
		if err != nil {
			return nil, func() {}, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		return postgres.NewInvoiceStore(pool), pool.Close, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, creds.URI)
		if err != nil {
			return nil, func() {}, err
		}
		closeFn := func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}
		s := mongodb.NewInvoiceStore(client.Database(creds.Database))
		if err := s.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, func() {}, err
		}
		return s, closeFn, nil
	}
	return nil, func() {}, fmt.Errorf("store: driver desconocido %q", creds.Driver)
}
