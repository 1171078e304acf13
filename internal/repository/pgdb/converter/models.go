package converter

import "time"

// ProductModel представляет запись таблицы produto в PostgreSQL.
// Числовые колонки читаются как текст (::text), чтобы не терять точность NUMERIC.
type ProductModel struct {
	ID           int64   `db:"co_produto"`
	Name         string  `db:"no_produto"`
	Rate         string  `db:"pc_taxa_juros"`
	MinTerm      int32   `db:"nu_minimo_meses"`
	MaxTerm      *int32  `db:"nu_maximo_meses"`
	MinPrincipal string  `db:"vr_minimo"`
	MaxPrincipal *string `db:"vr_maximo"`
}

// BoundsModel - результат агрегата MIN(vr_minimo), MAX(vr_maximo).
type BoundsModel struct {
	MinPrincipal *string
	MaxPrincipal *string
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	Key         string     `db:"event_key"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	Attempts    int32      `db:"attempts"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
