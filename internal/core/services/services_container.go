package services

import (
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
)

// Container holds all application services behind their port interfaces.
type Container struct {
	Client      portssvc.ClientSvcFacade
	Transaction portssvc.TransactionSvcFacade
	Company     portssvc.CompanySvcFacade
	Document    portssvc.DocumentSvcFacade
}

// Compile-time interface implementation checks
var (
	_ portssvc.ClientSvcFacade      = (*ClientService)(nil)
	_ portssvc.TransactionSvcFacade = (*TransactionService)(nil)
	_ portssvc.CompanySvcFacade     = (*CompanyService)(nil)
	_ portssvc.DocumentSvcFacade    = (*DocumentService)(nil)
)
