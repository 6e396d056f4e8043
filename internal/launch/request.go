package launch

import (
  "bytes"
  "encoding/json"
  "errors"
  "fmt"
  "regexp"
)

var (
  ErrMissingBody = errors.New("missing json body")
  ErrMissingField = errors.New("missing app_id")
  ErrInvalidFormat = errors.New("app_id is not a number")
  ErrSpawnFailure = errors.New("launcher spawn failed")
)

const internalErrorMessage = "An internal error occurred."

var appIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Request is the decoded body of a launch call.
type Request struct {
  AppID json.RawMessage `json:"app_id"`
}

// ParseRequest decodes body and returns the validated app_id in string form.
func ParseRequest(body []byte, maxLen int) (string, error) {
  body = bytes.TrimSpace(body)
  if len(body) == 0 {
    return "", ErrMissingBody
  }

  var fields map[string]json.RawMessage
  if err := json.Unmarshal(body, &fields); err != nil {
    return "", fmt.Errorf("%w: %v", ErrMissingBody, err)
  }
  if len(fields) == 0 {
    return "", ErrMissingBody
  }

  req := Request{AppID: fields["app_id"]}
  appID, err := normalizeAppID(req.AppID)
  if err != nil {
    return "", err
  }
  if err := ValidateAppID(appID, maxLen); err != nil {
    return "", err
  }
  return appID, nil
}

// normalizeAppID turns the raw JSON value into the string that gets matched
// against appIDPattern. Numbers keep their literal text, so 7.0 or 1e3 fail
// the digit check later instead of being rounded into a valid id.
func normalizeAppID(raw json.RawMessage) (string, error) {
  if len(raw) == 0 {
    return "", ErrMissingField
  }

  dec := json.NewDecoder(bytes.NewReader(raw))
  dec.UseNumber()
  var value any
  if err := dec.Decode(&value); err != nil {
    return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
  }

  switch v := value.(type) {
  case nil:
    return "", ErrMissingField
  case string:
    if v == "" {
      return "", ErrMissingField
    }
    return v, nil
  case json.Number:
    return v.String(), nil
  case bool:
    if !v {
      return "", ErrMissingField
    }
    return "", ErrInvalidFormat
  case []any:
    if len(v) == 0 {
      return "", ErrMissingField
    }
    return "", ErrInvalidFormat
  case map[string]any:
    if len(v) == 0 {
      return "", ErrMissingField
    }
    return "", ErrInvalidFormat
  default:
    return "", ErrInvalidFormat
  }
}

// ValidateAppID rejects anything but a non-empty run of ASCII digits no longer
// than maxLen. maxLen <= 0 disables the length check.
func ValidateAppID(appID string, maxLen int) error {
  if appID == "" {
    return ErrMissingField
  }
  if maxLen > 0 && len(appID) > maxLen {
    return fmt.Errorf("%w: longer than %d characters", ErrInvalidFormat, maxLen)
  }
  if !appIDPattern.MatchString(appID) {
    return ErrInvalidFormat
  }
  return nil
}

// ErrorMessage returns the caller-facing message for err. Spawn failures and
// unknown errors collapse to a generic message so no OS detail leaks out.
func ErrorMessage(err error) string {
  switch {
  case errors.Is(err, ErrMissingBody):
    return "Invalid request: Missing JSON body."
  case errors.Is(err, ErrMissingField):
    return "Invalid request: 'app_id' is required."
  case errors.Is(err, ErrInvalidFormat):
    return "Invalid app_id: Must be a number."
  default:
    return internalErrorMessage
  }
}

// ErrorKind is the metrics label for err.
func ErrorKind(err error) string {
  switch {
  case err == nil:
    return "success"
  case errors.Is(err, ErrMissingBody):
    return "missing_body"
  case errors.Is(err, ErrMissingField):
    return "missing_field"
  case errors.Is(err, ErrInvalidFormat):
    return "invalid_format"
  default:
    return "spawn_failure"
  }
}

// IsClientError reports whether err came from request validation.
func IsClientError(err error) bool {
  return errors.Is(err, ErrMissingBody) || errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidFormat)
}
