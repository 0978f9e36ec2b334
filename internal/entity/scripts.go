package entity

import "fmt"

// ScriptFor returns the BAS DSL/JS body embedded in a macro's Script
// section. Known categories get a tailored template; everything else gets
// the generic one.
func ScriptFor(macroID int, category string) string {
	switch category {
	case "youtube":
		return fmt.Sprintf(`section(1,1,1,0,function(){
    log("Starting YouTube automation macro %d");
    Navigate("https://youtube.com");
    Wait(2000);
    var searchBox = ElementBySelector("input#search");
    if(searchBox.exist()) {
        Type(searchBox, "BAS %s automation");
        Click(ElementBySelector("button#search-icon-legacy"));
        Wait(3000);
    }
    return "YouTube automation completed";
});`, macroID, EngineVersion)
	case "proxy":
		return fmt.Sprintf(`section(1,1,1,0,function(){
    log("Configuring proxy settings for macro %d");
    var proxyConfig = {
        "host": "proxy.enterprise.com",
        "port": 8080,
        "type": "HTTP"
    };
    SetProxy(proxyConfig);
    Navigate("https://httpbin.org/ip");
    Wait(3000);
    return "Proxy configuration completed";
});`, macroID)
	case "browser":
		return fmt.Sprintf(`section(1,1,1,0,function(){
    log("Browser management macro %d starting");
    SetUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36");
    SetWindowSize(1920, 1080);
    ExecuteScript("localStorage.clear(); sessionStorage.clear();");
    Navigate("https://github.com");
    Wait(2000);
    return "Success";
});`, macroID)
	default:
		return fmt.Sprintf(`section(1,1,1,0,function(){
    log("Enterprise automation macro %d for %s");
    try {
        var startTime = Date.now();
        Wait(Random(1000, 3000));
        log("Macro completed in " + (Date.now() - startTime) + "ms");
        return "Macro execution successful";
    } catch(error) {
        log("Macro error: " + error.message);
        return "Macro execution failed";
    }
});`, macroID, category)
	}
}
