package factory

import (
	"strings"

	"proxytray/internal/document"

	"github.com/tidwall/gjson"
)

// kwarg is one share-link parameter. Lists keep the emission order of the dialect.
type kwarg struct {
	key   string
	value string
}

type kwargs []kwarg

func (kw *kwargs) add(key, value string) {
	if value != "" {
		*kw = append(*kw, kwarg{key: key, value: value})
	}
}

func (kw kwargs) get(key string) string {
	for _, a := range kw {
		if a.key == key {
			return a.value
		}
	}
	return ""
}

// networkSettingsKey maps a stream network to the key holding its settings.
// "h2" is stored under httpSettings, as the engine expects.
func networkSettingsKey(network string) string {
	switch network {
	case "h2":
		return "httpSettings"
	case "tcp", "kcp", "ws", "http", "quic", "grpc":
		return network + "Settings"
	}
	return ""
}

func tlsSettingsKey(security string) string {
	switch security {
	case "tls", "reality":
		return security + "Settings"
	}
	return ""
}

// networkObjectFromKwargs builds <network>Settings from VLESS-dialect parameter names.
func networkObjectFromKwargs(network string, kw map[string]string) document.Document {
	switch network {
	case "tcp":
		headerType := valueOr(kw["headerType"], "none")
		header := document.Of(document.F("type", headerType))
		if headerType == "http" {
			_ = header.Set("request", document.Of(
				document.F("path", []string{valueOr(kw["path"], "/")}),
				document.F("headers", document.Of(document.F("Host", splitList(kw["host"])))),
			))
		}
		return document.Of(document.F("header", header))
	case "kcp":
		obj := document.Of(document.F("header", document.Of(document.F("type", valueOr(kw["headerType"], "none")))))
		if seed := kw["seed"]; seed != "" {
			_ = obj.Set("seed", seed)
		}
		return obj
	case "ws":
		obj := document.Of(document.F("path", valueOr(kw["path"], "/")))
		if host := kw["host"]; host != "" {
			_ = obj.Set("headers", document.Of(document.F("Host", host)))
		}
		return obj
	case "h2", "http":
		var obj document.Document
		if host := kw["host"]; host != "" {
			_ = obj.Set("host", splitList(host))
		}
		_ = obj.Set("path", valueOr(kw["path"], "/"))
		return obj
	case "quic":
		return document.Of(
			document.F("security", valueOr(kw["quicSecurity"], "none")),
			document.F("key", kw["key"]),
			document.F("header", document.Of(document.F("type", valueOr(kw["headerType"], "none")))),
		)
	case "grpc":
		return document.Of(
			document.F("serviceName", kw["serviceName"]),
			document.F("multiMode", kw["mode"] == "multi"),
		)
	}
	return document.Empty()
}

// tlsObjectFromKwargs builds <security>Settings from share-link parameters.
func tlsObjectFromKwargs(security string, kw map[string]string) document.Document {
	var obj document.Document
	switch security {
	case "tls":
		if sni := kw["sni"]; sni != "" {
			_ = obj.Set("serverName", sni)
		}
		if v, ok := kw["allowInsecure"]; ok {
			_ = obj.Set("allowInsecure", v == "1" || v == "true")
		}
		if alpn := kw["alpn"]; alpn != "" {
			_ = obj.Set("alpn", splitList(alpn))
		}
		if fp := kw["fp"]; fp != "" {
			_ = obj.Set("fingerprint", fp)
		}
	case "reality":
		for _, m := range [][2]string{
			{"sni", "serverName"},
			{"fp", "fingerprint"},
			{"pbk", "publicKey"},
			{"sid", "shortId"},
			{"spx", "spiderX"},
		} {
			if v := kw[m[0]]; v != "" {
				_ = obj.Set(m[1], v)
			}
		}
	}
	return obj
}

// kwargsFromNetworkObject is the inverse of networkObjectFromKwargs.
func kwargsFromNetworkObject(network string, obj document.Document) kwargs {
	var kw kwargs
	switch network {
	case "tcp":
		headerType := obj.GetString("header.type")
		kw.add("headerType", headerType)
		if headerType == "http" {
			kw.add("host", joinList(obj.Get("header.request.headers.Host")))
			kw.add("path", firstOf(obj.Get("header.request.path")))
		}
	case "kcp":
		kw.add("headerType", obj.GetString("header.type"))
		kw.add("seed", obj.GetString("seed"))
	case "ws":
		kw.add("host", obj.GetString("headers.Host"))
		kw.add("path", obj.GetString("path"))
	case "h2", "http":
		kw.add("host", joinList(obj.Get("host")))
		kw.add("path", obj.GetString("path"))
	case "quic":
		kw.add("quicSecurity", obj.GetString("security"))
		kw.add("key", obj.GetString("key"))
		kw.add("headerType", obj.GetString("header.type"))
	case "grpc":
		kw.add("serviceName", obj.GetString("serviceName"))
		if obj.Get("multiMode").Bool() {
			kw.add("mode", "multi")
		} else {
			kw.add("mode", "gun")
		}
	}
	return kw
}

// kwargsFromTLSObject is the inverse of tlsObjectFromKwargs.
func kwargsFromTLSObject(security string, obj document.Document) kwargs {
	var kw kwargs
	switch security {
	case "tls":
		kw.add("sni", obj.GetString("serverName"))
		kw.add("fp", obj.GetString("fingerprint"))
		kw.add("alpn", joinList(obj.Get("alpn")))
		if v := obj.Get("allowInsecure"); v.Exists() {
			if v.Bool() {
				kw.add("allowInsecure", "1")
			} else {
				kw.add("allowInsecure", "0")
			}
		}
	case "reality":
		kw.add("sni", obj.GetString("serverName"))
		kw.add("fp", obj.GetString("fingerprint"))
		kw.add("pbk", obj.GetString("publicKey"))
		kw.add("sid", obj.GetString("shortId"))
		kw.add("spx", obj.GetString("spiderX"))
	}
	return kw
}

// vmessTransportKeys maps the three generic VMess JSON keys to VLESS-dialect
// parameter names, per network.
var vmessTransportKeys = map[string]map[string]string{
	"tcp":  {"type": "headerType", "host": "host", "path": "path"},
	"kcp":  {"type": "headerType", "path": "seed"},
	"ws":   {"host": "host", "path": "path"},
	"h2":   {"host": "host", "path": "path"},
	"http": {"host": "host", "path": "path"},
	"quic": {"type": "headerType", "host": "quicSecurity", "path": "key"},
	"grpc": {"type": "mode", "path": "serviceName"},
}

var vmessTransportOrder = []string{"type", "host", "path"}

// vmessTLSKeys are copied between VMess JSON and TLS kwargs under the same names.
var vmessTLSKeys = []string{"sni", "alpn", "fp", "allowInsecure", "pbk", "sid", "spx"}

func vmessToKwargs(network string, payload document.Document) map[string]string {
	kw := make(map[string]string)
	for vk, name := range vmessTransportKeys[network] {
		v := payload.GetString(vk)
		if v == "" {
			continue
		}
		if name == "headerType" && v == "auto" {
			continue
		}
		kw[name] = v
	}
	for _, k := range vmessTLSKeys {
		if r := payload.Get(k); r.Exists() {
			kw[k] = payload.GetString(k)
		}
	}
	return kw
}

func kwargsToVMess(network string, kw kwargs) kwargs {
	var out kwargs
	names := vmessTransportKeys[network]
	for _, vk := range vmessTransportOrder {
		if name, ok := names[vk]; ok {
			out.add(vk, kw.get(name))
		}
	}
	return out
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// joinList accepts either a JSON array of strings or a single string.
func joinList(r gjson.Result) string {
	if !r.IsArray() {
		if r.Type == gjson.String {
			return r.String()
		}
		return ""
	}
	var parts []string
	for _, item := range r.Array() {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, ",")
}

func firstOf(r gjson.Result) string {
	if r.IsArray() {
		items := r.Array()
		if len(items) == 0 {
			return ""
		}
		return items[0].String()
	}
	if r.Type == gjson.String {
		return r.String()
	}
	return ""
}
