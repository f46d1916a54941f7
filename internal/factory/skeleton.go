package factory

import (
	"proxytray/internal/document"
)

const (
	defaultListen    = "127.0.0.1"
	defaultSocksPort = 10808
	defaultHTTPPort  = 10809
)

func socksInbound(listen string, port int) document.Document {
	return document.Of(
		document.F("tag", "socks"),
		document.F("port", port),
		document.F("listen", listen),
		document.F("protocol", "socks"),
		document.F("sniffing", sniffing()),
		document.F("settings", document.Of(
			document.F("auth", "noauth"),
			document.F("udp", true),
		)),
	)
}

func httpInbound(listen string, port int) document.Document {
	return document.Of(
		document.F("tag", "http"),
		document.F("port", port),
		document.F("listen", listen),
		document.F("protocol", "http"),
		document.F("sniffing", sniffing()),
		document.F("settings", document.Of(
			document.F("allowTransparent", false),
		)),
	)
}

func sniffing() document.Document {
	return document.Of(
		document.F("enabled", true),
		document.F("destOverride", []string{"http", "tls"}),
	)
}

// proxyOutbound assembles the "proxy" outbound. Empty settings keys are omitted.
func proxyOutbound(protocol string, settings document.Document, network, security string, networkObj, tlsObj document.Document) document.Document {
	stream := document.Of(
		document.F("network", network),
		document.F("security", security),
	)
	if key := networkSettingsKey(network); key != "" {
		_ = stream.Set(key, networkObj)
	}
	if key := tlsSettingsKey(security); key != "" {
		_ = stream.Set(key, tlsObj)
	}
	return document.Of(
		document.F("tag", "proxy"),
		document.F("protocol", protocol),
		document.F("settings", settings),
		document.F("streamSettings", stream),
		document.F("mux", document.Of(
			document.F("enabled", false),
			document.F("concurrency", -1),
		)),
	)
}

// xraySkeleton wraps a proxy outbound with the default listeners, the direct and
// block outbounds, logging and an empty routing section.
func xraySkeleton(proxy document.Document) document.Document {
	return document.Of(
		document.F("log", document.Of(
			document.F("access", ""),
			document.F("error", ""),
			document.F("loglevel", "warning"),
		)),
		document.F("inbounds", []document.Document{
			socksInbound(defaultListen, defaultSocksPort),
			httpInbound(defaultListen, defaultHTTPPort),
		}),
		document.F("outbounds", []document.Document{
			proxy,
			document.Of(
				document.F("tag", "direct"),
				document.F("protocol", "freedom"),
				document.F("settings", document.Empty()),
			),
			document.Of(
				document.F("tag", "block"),
				document.F("protocol", "blackhole"),
				document.F("settings", document.Of(
					document.F("response", document.Of(document.F("type", "http"))),
				)),
			),
		}),
		document.F("routing", document.Empty()),
	)
}
