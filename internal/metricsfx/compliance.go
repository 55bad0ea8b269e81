package metricsfx

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/snapaudit/pkg/domain"
	"github.com/yurykabanov/snapaudit/pkg/http/handler"
)

func ComplianceHandler(logger *logrus.Logger, auditor *domain.Auditor) *handler.ComplianceHandler {
	return handler.NewComplianceHandler(logger, auditor)
}

func RegisterComplianceHandler(router *mux.Router, h *handler.ComplianceHandler) {
	router.Handle("/metrics/compliance", h)
}
