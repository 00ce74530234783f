package business

import "github.com/maxturnos/turnos-service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
