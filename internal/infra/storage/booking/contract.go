package booking

import "github.com/m04kA/SMC-ConsultationService/pkg/txmanager"

// DBExecutor интерфейс для работы с БД (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
