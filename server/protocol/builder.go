package protocol

// lookup table for status lines we can send,
// successful requests get no response at all so the list is short
var statusTable = map[int]string{
	400: "400 Bad Request",
	500: "500 Internal Server Error",
}

var crlf = []byte("\r\n")

// proto version used for error responses
const errorProto = "HTTP/0.9"

// AppendStatus appends "<proto> <code> <reason>\r\n\r\n" to dst,
// unknown codes become 500. no headers and no body
func AppendStatus(dst []byte, proto string, code int) []byte {
	st, ok := statusTable[code]
	if !ok {
		st = statusTable[500]
	}

	dst = append(dst, proto...)
	dst = append(dst, ' ')
	dst = append(dst, st...)
	dst = append(dst, crlf...)
	dst = append(dst, crlf...)
	return dst
}

// BadRequest is the whole response for an over-long token
var BadRequest = AppendStatus(nil, errorProto, 400)
