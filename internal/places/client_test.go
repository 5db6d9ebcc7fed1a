package places

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/octobees/nearby-restaurants/internal/entity"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const sampleResponse = `{
  "places": [
    {
      "id": "place-1",
      "displayName": {"text": "Trattoria", "languageCode": "en"},
      "rating": 4.5,
      "formattedAddress": "1 Main St",
      "photos": [{"name": "places/place-1/photos/ABC", "widthPx": 800, "heightPx": 600}]
    },
    {
      "id": "place-2",
      "rating": 0
    },
    {
      "id": "place-3"
    }
  ]
}`

func TestClient_Search_RequestShape(t *testing.T) {
	var captured struct {
		method, path, apiKey, fieldMask, contentType string
		body                                         map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("X-Goog-Api-Key")
		captured.fieldMask = r.Header.Get("X-Goog-FieldMask")
		captured.contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL+"/v1/", "test-key")
	got, err := client.Search(context.Background(), entity.Coordinate{Latitude: 40.7, Longitude: -74.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.method != http.MethodPost {
		t.Fatalf("expected POST, got %s", captured.method)
	}
	if captured.path != "/v1/places:searchNearby" {
		t.Fatalf("unexpected path %s", captured.path)
	}
	if captured.apiKey != "test-key" {
		t.Fatalf("expected api key header, got %q", captured.apiKey)
	}
	if captured.fieldMask != "places.displayName,places.photos,places.id,places.formattedAddress,places.rating" {
		t.Fatalf("unexpected field mask %q", captured.fieldMask)
	}
	if captured.contentType != "application/json" {
		t.Fatalf("unexpected content type %q", captured.contentType)
	}

	body := captured.body
	if body["maxResultCount"] != float64(10) {
		t.Fatalf("expected maxResultCount 10, got %v", body["maxResultCount"])
	}
	if body["rankPreference"] != "DISTANCE" {
		t.Fatalf("expected DISTANCE ranking, got %v", body["rankPreference"])
	}
	types, _ := body["includedTypes"].([]any)
	if len(types) != 1 || types[0] != "restaurant" {
		t.Fatalf("unexpected includedTypes %v", body["includedTypes"])
	}
	circle := body["locationRestriction"].(map[string]any)["circle"].(map[string]any)
	if circle["radius"] != 8500.0 {
		t.Fatalf("expected radius 8500, got %v", circle["radius"])
	}
	center := circle["center"].(map[string]any)
	if center["latitude"] != 40.7 || center["longitude"] != -74.0 {
		t.Fatalf("unexpected center %v", center)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 places, got %d", len(got))
	}
	if got[0].ID != "place-1" || got[0].DisplayName == nil || got[0].DisplayName.Text != "Trattoria" {
		t.Fatalf("unexpected first place %+v", got[0])
	}
	if got[0].Rating == nil || *got[0].Rating != 4.5 {
		t.Fatalf("expected rating 4.5, got %v", got[0].Rating)
	}
	if len(got[0].Photos) != 1 || got[0].Photos[0].Name != "places/place-1/photos/ABC" {
		t.Fatalf("unexpected photos %+v", got[0].Photos)
	}
	if got[1].Rating == nil || *got[1].Rating != 0 {
		t.Fatalf("expected explicit zero rating to be kept, got %v", got[1].Rating)
	}
	if got[2].Rating != nil {
		t.Fatalf("expected absent rating, got %v", *got[2].Rating)
	}
}

func TestClient_Search_ZeroCoordinatesAreSent(t *testing.T) {
	var body map[string]any
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		_ = json.NewDecoder(req.Body).Decode(&body)
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{}`)), Header: http.Header{}}, nil
	})}, "", "key")

	got, err := client.Search(context.Background(), entity.Coordinate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no places, got %d", len(got))
	}

	center := body["locationRestriction"].(map[string]any)["circle"].(map[string]any)["center"].(map[string]any)
	if _, ok := center["latitude"]; !ok {
		t.Fatalf("expected latitude to be sent for the equator")
	}
	if _, ok := center["longitude"]; !ok {
		t.Fatalf("expected longitude to be sent for the prime meridian")
	}
}

func TestClient_Search_DefaultsToProductionEndpoint(t *testing.T) {
	var url string
	client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		url = req.URL.String()
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
	})}, "", "key")

	if _, err := client.Search(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://places.googleapis.com/v1/places:searchNearby" {
		t.Fatalf("unexpected endpoint %s", url)
	}
}

func TestClient_Search_Errors(t *testing.T) {
	t.Run("api rejects request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
		}))
		defer server.Close()

		client := NewClient(server.Client(), server.URL, "bad-key")
		_, err := client.Search(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 2})

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusForbidden {
			t.Fatalf("expected status 403, got %d", apiErr.StatusCode)
		}
		if apiErr.Message != "API key not valid" {
			t.Fatalf("unexpected message %q", apiErr.Message)
		}
		if !strings.Contains(apiErr.Body, "PERMISSION_DENIED") {
			t.Fatalf("expected raw body for diagnostics, got %q", apiErr.Body)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})}, "http://places.test", "key")

		_, err := client.Search(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 2})

		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
		if !strings.Contains(err.Error(), "network down") {
			t.Fatalf("expected cause in message, got %s", err.Error())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		client := NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"places": [`)), Header: http.Header{}}, nil
		})}, "http://places.test", "key")

		_, err := client.Search(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 2})

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200 recorded, got %d", apiErr.StatusCode)
		}
	})
}
