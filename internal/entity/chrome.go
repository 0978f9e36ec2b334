package entity

import "basgen/internal/xmltree"

var chromeFlags = []string{
	"--disable-web-security",
	"--disable-features=VizDisplayCompositor",
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
	"--disable-field-trial-config",
	"--disable-ipc-flooding-protection",
	"--enable-automation",
	"--no-default-browser-check",
	"--no-first-run",
	"--password-store=basic",
	"--use-mock-keychain",
	"--disable-component-extensions-with-background-pages",
	"--disable-default-apps",
	"--disable-extensions",
	"--disable-background-networking",
	"--disable-sync",
	"--metrics-recording-only",
	"--disable-prompt-on-repost",
	"--disable-hang-monitor",
	"--disable-client-side-phishing-detection",
	"--disable-popup-blocking",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-gpu",
	"--window-size=1920,1080",
	"--start-maximized",
}

// ChromeConfiguration builds the fixed browser configuration section.
func ChromeConfiguration() *xmltree.Element {
	section := xmltree.New("ChromeConfiguration")
	section.SetAttr("version", EngineVersion)

	commandLine := section.Child("ChromeCommandLine")
	for _, flag := range chromeFlags {
		commandLine.TextChild("Flag", flag)
	}

	prefs := section.Child("Preferences")

	privacy := prefs.Child("Privacy")
	privacy.SetAttr("password_manager_enabled", "false")
	privacy.SetAttr("autofill_enabled", "false")
	privacy.SetAttr("safe_browsing", "disabled")

	performance := prefs.Child("Performance")
	performance.SetAttr("hardware_acceleration", "false")
	performance.SetAttr("memory_saver", "disabled")
	performance.SetAttr("preload_pages", "no_preloading")

	return section
}
