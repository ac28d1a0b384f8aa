package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"io/ioutil"
	"net/http"
	"time"
)

const (
	jsonrpcVersion = "2.0"
)

// Client is a JSON RPC client (over HTTP(s)) used to talk to the external
// asset registry and value ledger.
type Client struct {
	url        string
	httpClient *retryablehttp.Client
	timeout    int
	debug      bool
}

type Request struct {
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	Id      int64       `json:"id"`
	JsonRpc string      `json:"jsonrpc"`
}

// RPCErrorCode represents an error code to be used as a part of an RPCError
// which is in turn used in a JSON-RPC Response object.
type RPCErrorCode int

type RPCError struct {
	Code    RPCErrorCode `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

var _, _ error = RPCError{}, (*RPCError)(nil)

func (e RPCError) Error() string {
	return fmt.Sprintf("%d:%s", e.Code, e.Message)
}

type Response struct {
	Id     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func NewClient(url string, timeout int, debug bool) (*Client, error) {
	if len(url) == 0 {
		return nil, errors.New("bad call missing argument host")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 3

	return &Client{
		url,
		retryClient,
		timeout,
		debug,
	}, nil
}

func NewRequest(method string, params ...interface{}) *Request {
	return &Request{
		Method:  method,
		Params:  params,
		Id:      time.Now().UnixNano(),
		JsonRpc: jsonrpcVersion,
	}
}

func (c *Client) Call(method string, params ...interface{}) (*Response, error) {
	req := NewRequest(method, params...)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	if c.debug {
		zap.L().With(zap.String("method", method), zap.String("payload", string(payload))).Debug("Rpc: request")
	}

	httpReq, err := retryablehttp.NewRequest("POST", c.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.httpClient.HTTPClient.Timeout = time.Duration(c.timeout) * time.Second

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.debug {
		zap.L().With(zap.String("method", method), zap.String("body", string(body))).Debug("Rpc: response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc call %s returned status %d", method, resp.StatusCode)
	}

	response := &Response{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, *response.Error
	}

	return response, nil
}
