package notification

import "context"

// UnreadCache cachea el conteo de notificaciones sin leer por usuario.
// ok=false en Get significa cache miss. Los fallos del cache degradan a la
// consulta SQL, nunca interrumpen la operación.
type UnreadCache interface {
	Get(ctx context.Context, userID int64) (count int64, ok bool, err error)
	Set(ctx context.Context, userID, count int64) error
	Invalidate(ctx context.Context, userID int64) error
}
