package stats

import "context"

type Repository interface {
	// ListRows returns rows dated from..to inclusive; barberID "" means every barber.
	ListRows(ctx context.Context, from, to, barberID string) ([]Row, error)
	ListBarbers(ctx context.Context) ([]BarberRef, error)
	GetBarber(ctx context.Context, id string) (BarberRef, error)
}
