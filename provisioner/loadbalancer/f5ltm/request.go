package f5ltm

import (
	"fmt"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/interlook/bigconverge/log"
	"github.com/pkg/errors"
)

// apiError is the body iControl REST returns on failure
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// checkResponse turns transport errors and non 2xx replies into errors
func checkResponse(resp *resty.Response, err error, method, uri string) error {
	if err != nil {
		return errors.Wrapf(err, "%v %v", method, uri)
	}

	if resp.IsError() {
		msg := resp.Status()
		if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
			msg = e.Message
		}
		return errors.Errorf("%v %v returned %v: %v", method, uri, resp.StatusCode(), msg)
	}

	log.Debugf("%v %v returned %v", method, uri, resp.StatusCode())
	return nil
}

func (f5 *BigIP) get(uri string, result interface{}) error {
	resp, err := f5.rest.R().
		SetResult(result).
		SetError(&apiError{}).
		Get(uri)
	return checkResponse(resp, err, "GET", uri)
}

func (f5 *BigIP) post(uri string, body interface{}) error {
	resp, err := f5.rest.R().
		SetBody(body).
		SetError(&apiError{}).
		Post(uri)
	return checkResponse(resp, err, "POST", uri)
}

func (f5 *BigIP) patch(uri string, body interface{}) error {
	resp, err := f5.rest.R().
		SetBody(body).
		SetError(&apiError{}).
		Patch(uri)
	return checkResponse(resp, err, "PATCH", uri)
}

func (f5 *BigIP) delete(uri string) error {
	resp, err := f5.rest.R().
		SetError(&apiError{}).
		Delete(uri)
	return checkResponse(resp, err, "DELETE", uri)
}

// upload sends data to the file transfer endpoint and returns the path the
// appliance stored it under
func (f5 *BigIP) upload(file string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.Errorf("empty file %v", file)
	}

	uri := uriFileTransfer + path.Base(file)
	resp, err := f5.rest.R().
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("Content-Range", fmt.Sprintf("0-%d/%d", len(data)-1, len(data))).
		SetBody(data).
		SetError(&apiError{}).
		Post(uri)
	if err := checkResponse(resp, err, "POST", uri); err != nil {
		return "", err
	}

	return restDownloadsFolder + path.Base(file), nil
}
