package statuscode

var detailed = map[int]string{
	300: "Multiple Choices: the request has more than one possible response.",
	301: "Moved Permanently: the resource has a new permanent URL.",
	302: "Found: the resource lives temporarily under a different URL.",
	303: "See Other: the response can be found under another URL with a GET request.",
	304: "Not Modified: the cached version of the resource is still valid.",
	307: "Temporary Redirect: repeat the request with the same method at another URL.",
	308: "Permanent Redirect: repeat the request with the same method at another URL from now on.",

	400: "Bad Request: the server could not understand the request due to invalid syntax.",
	401: "Unauthorized: authentication is required and has failed or has not been provided.",
	402: "Payment Required: reserved for future use.",
	403: "Forbidden: the client does not have access rights to the content.",
	404: "Not Found: the server can not find the requested resource.",
	405: "Method Not Allowed: the request method is not supported by the target resource.",
	406: "Not Acceptable: no content matches the criteria given by the user agent.",
	407: "Proxy Authentication Required: authentication must be done by a proxy.",
	408: "Request Timeout: the server timed out waiting for the request.",
	409: "Conflict: the request conflicts with the current state of the server.",
	410: "Gone: the requested content has been permanently deleted from the server.",
	411: "Length Required: the server requires a Content-Length header.",
	412: "Precondition Failed: preconditions in the request headers were not met.",
	413: "Content Too Large: the request body is larger than the server is willing to process.",
	414: "URI Too Long: the URI requested by the client is longer than the server will interpret.",
	415: "Unsupported Media Type: the media format of the request is not supported.",
	416: "Range Not Satisfiable: the range in the Range header can not be fulfilled.",
	417: "Expectation Failed: the Expect request header can not be met.",
	418: "I'm a teapot: the server refuses to brew coffee with a teapot.",
	421: "Misdirected Request: the request was directed at a server unable to produce a response.",
	422: "Unprocessable Content: the request was well-formed but had semantic errors.",
	423: "Locked: the resource being accessed is locked.",
	424: "Failed Dependency: the request failed because a previous request failed.",
	425: "Too Early: the server is unwilling to process a request that might be replayed.",
	426: "Upgrade Required: the client should switch to a different protocol.",
	428: "Precondition Required: the origin server requires the request to be conditional.",
	429: "Too Many Requests: the user has sent too many requests in a given amount of time.",
	431: "Request Header Fields Too Large: the request header fields are too large.",
	451: "Unavailable For Legal Reasons: the resource can not legally be provided.",

	500: "Internal Server Error: the server encountered a situation it does not know how to handle.",
	501: "Not Implemented: the request method is not supported by the server.",
	502: "Bad Gateway: the server got an invalid response while working as a gateway.",
	503: "Service Unavailable: the server is not ready to handle the request.",
	504: "Gateway Timeout: the server did not get a response in time while acting as a gateway.",
	505: "HTTP Version Not Supported: the HTTP version used in the request is not supported.",
	506: "Variant Also Negotiates: the server has an internal configuration error.",
	507: "Insufficient Storage: the server is unable to store the representation needed.",
	508: "Loop Detected: the server detected an infinite loop while processing the request.",
	510: "Not Extended: further extensions to the request are required.",
	511: "Network Authentication Required: the client needs to authenticate to gain network access.",
}
