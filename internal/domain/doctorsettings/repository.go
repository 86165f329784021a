package doctorsettings

import "context"

type Repository interface {
	// Upsert inserta o reemplaza la fila del médico (clave: DoctorID).
	Upsert(ctx context.Context, s Settings) error
	GetByDoctor(ctx context.Context, doctorID string) (Settings, error)

	// List devuelve todos los médicos con settings, en el orden natural del store.
	List(ctx context.Context) ([]Settings, error)
}
