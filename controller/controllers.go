// api/controller/controllers.go
package controller

// Controllers bundles every HTTP controller for router setup.
type Controllers struct {
	Access    *AccessController
	Gateway   *DicomGatewayController
	Condition *ConditionController
	Audit     *AuditController
}
