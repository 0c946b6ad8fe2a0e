package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/ClassroomPrayers/display"
)

// WeatherRefreshInterval matches the display client's 15 minute cadence.
const WeatherRefreshInterval = 15 * time.Minute

const defaultWeatherURL = "https://api.open-meteo.com/v1/forecast"

// Default coordinates: Tucson, AZ.
const (
	defaultLatitude  = "32.254"
	defaultLongitude = "-110.945"
)

// WeatherService periodically fetches the forecast from Open-Meteo. Fetch
// failures are logged and swallowed; the prior reading stays on the board,
// or a loading state if nothing was ever fetched.
type WeatherService struct {
	client    *http.Client
	baseURL   string
	latitude  string
	longitude string

	mu      sync.Mutex
	reading *display.Weather
	stop    chan struct{}
}

var weatherService *WeatherService

func InitWeatherService() {
	weatherService = &WeatherService{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   defaultWeatherURL,
		latitude:  envOr("WEATHER_LATITUDE", defaultLatitude),
		longitude: envOr("WEATHER_LONGITUDE", defaultLongitude),
		stop:      make(chan struct{}),
	}

	go func() {
		weatherService.refresh()
		ticker := time.NewTicker(WeatherRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-weatherService.stop:
				return
			case <-ticker.C:
				weatherService.refresh()
			}
		}
	}()

	log.Println("Weather service initialized")
}

func GetWeatherService() *WeatherService {
	return weatherService
}

// Current returns the latest reading; ok is false until the first
// successful fetch.
func (s *WeatherService) Current() (display.Weather, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reading == nil {
		return display.Weather{}, false
	}
	return *s.reading, true
}

func (s *WeatherService) Stop() {
	close(s.stop)
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
	} `json:"current"`
	Daily struct {
		Max []float64 `json:"temperature_2m_max"`
		Min []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (s *WeatherService) refresh() {
	url := fmt.Sprintf(
		"%s?latitude=%s&longitude=%s&current=temperature_2m&daily=temperature_2m_max,temperature_2m_min&temperature_unit=fahrenheit&timezone=auto",
		s.baseURL, s.latitude, s.longitude,
	)

	resp, err := s.client.Get(url)
	if err != nil {
		log.Printf("Weather fetch failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Weather fetch failed: status %d", resp.StatusCode)
		return
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		log.Printf("Weather decode failed: %v", err)
		return
	}
	if len(forecast.Daily.Max) == 0 || len(forecast.Daily.Min) == 0 {
		log.Println("Weather response missing daily range")
		return
	}

	reading := display.Weather{
		Current: int(math.Round(forecast.Current.Temperature)),
		High:    int(math.Round(forecast.Daily.Max[0])),
		Low:     int(math.Round(forecast.Daily.Min[0])),
	}

	s.mu.Lock()
	s.reading = &reading
	s.mu.Unlock()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
