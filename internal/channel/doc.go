/*
Package channel carries bridge requests over a single named channel.

# Wire Format

Each message is one JSON object on its own line.

Request:

	{"id": "42", "channel": "com.example.hanja_magic/apps", "method": "launchApp",
	 "arguments": {"packageName": "com.android.chrome", "extraData": "https://example.com"}}

Response:

	{"id": "42", "status": "success", "result": true}
	{"id": "43", "status": "error", "result": null,
	 "error": {"code": "PERMISSION_DENIED", "kind": "PermissionRequired", "message": "..."}}
	{"id": "44", "status": "notImplemented", "result": null, "error": {...}}

A missing id is replaced by a generated req_<ULID>. The channel field may
be omitted; when present it must match the channel name.

# Transport

Serve reads requests from an io.Reader and answers each one before reading
the next, so at most one request is in flight.
*/
package channel
