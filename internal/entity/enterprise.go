package entity

import "basgen/internal/xmltree"

var catchActions = []string{"LogError", "RetryAction", "SendAlert", "Backoff", "RestartProject"}

// EnterpriseFeatures builds the fixed enterprise deployment section.
func EnterpriseFeatures() *xmltree.Element {
	section := xmltree.New("EnterpriseFeatures")
	section.SetAttr("version", EngineVersion)

	vps := section.Child("VPSConfiguration")
	vps.SetAttr("os", "Windows Server 2022")
	vps.SetAttr("compatibility_mode", "enterprise")

	service := vps.Child("ServiceConfiguration")
	service.SetAttr("run_as_service", "true")
	service.SetAttr("auto_start", "true")
	service.SetAttr("restart_on_failure", "true")

	display := vps.Child("DisplaySettings")
	display.SetAttr("width", "1920")
	display.SetAttr("height", "1080")
	display.SetAttr("headless", "false")
	display.SetAttr("rdp_compatible", "true")

	security := section.Child("SecurityConfiguration")
	security.SetAttr("uac_bypass", "true")
	security.SetAttr("firewall_bypass", "selective")
	security.SetAttr("antivirus_exclusion", "true")

	monitoring := section.Child("PerformanceMonitoring")
	monitoring.SetAttr("cpu_monitoring", "true")
	monitoring.SetAttr("memory_monitoring", "true")
	monitoring.SetAttr("thread_monitoring", "true")
	monitoring.SetAttr("network_monitoring", "true")

	logging := section.Child("LoggingConfiguration")
	logging.SetAttr("level", "INFO")
	logging.SetAttr("file_output", "true")
	logging.SetAttr("console_output", "true")
	logging.SetAttr("max_file_size", "100MB")
	logging.SetAttr("retention_days", "30")

	recovery := section.Child("ErrorRecovery")
	for _, action := range catchActions {
		catch := recovery.Child("CatchAction")
		catch.SetAttr("type", action)
		catch.SetAttr("enabled", "true")
		catch.SetAttr("max_retries", "3")
		catch.SetAttr("backoff_factor", "2.0")
	}

	return section
}
