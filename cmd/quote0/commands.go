package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1set/quote0/v2"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List registered devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		devices, err := client.ListDevices(cmd.Context())
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No devices registered.")
			return nil
		}
		for _, d := range devices {
			fmt.Printf("%s  series=%s model=%s edition=%d\n", d.ID, d.Series, d.Model, d.Edition)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device status (battery, Wi-Fi, render info)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		status, err := client.GetDeviceStatus(cmd.Context(), flagDevice)
		if err != nil {
			return err
		}
		fmt.Printf("Device:      %s\n", status.DeviceID)
		if status.Alias != nil {
			fmt.Printf("Alias:       %s\n", *status.Alias)
		}
		if status.Location != nil {
			fmt.Printf("Location:    %s\n", *status.Location)
		}
		fmt.Printf("Battery:     %s (%s)\n", status.Status.Battery, status.Status.Description)
		fmt.Printf("Wi-Fi:       %s\n", status.Status.Wifi)
		fmt.Printf("Firmware:    %s\n", status.Status.Version)
		fmt.Printf("Last render: %s\n", status.RenderInfo.Last)
		fmt.Printf("Next checks: battery=%s power=%s\n",
			status.RenderInfo.Next.Battery, status.RenderInfo.Next.Power)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Switch the device to the next queued content",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.SwitchToNext(cmd.Context(), flagDevice)
		if err != nil {
			return err
		}
		fmt.Printf("Switched (code=%s message=%s)\n", resp.Code, resp.Message)
		return nil
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List queued tasks for the device",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		tasks, err := client.ListTasks(cmd.Context(), flagDevice, quote0.TaskListLoop)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No queued tasks.")
			return nil
		}
		for _, task := range tasks {
			line := fmt.Sprintf("%-9s key=%s refreshNow=%v", task.Type, task.Key, task.RefreshNow)
			if task.Title != nil {
				line += fmt.Sprintf(" title=%q", *task.Title)
			}
			if task.Border != nil {
				line += fmt.Sprintf(" border=%d", *task.Border)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var (
	flagTitle     string
	flagMessage   string
	flagSignature string
	flagIcon      string
	flagIconFile  string
	flagLink      string
	flagTaskKey   string
	flagNoRefresh bool
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Push text content to the device",
	RunE: func(cmd *cobra.Command, args []string) error {
		icon, err := loadBase64(flagIcon, flagIconFile, "icon")
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		req := quote0.TextContentRequest{
			Title:     flagTitle,
			Message:   flagMessage,
			Signature: flagSignature,
			Icon:      icon,
			Link:      flagLink,
			TaskKey:   resolveTaskKey(flagTaskKey),
		}
		if flagNoRefresh {
			req.RefreshNow = quote0.Bool(false)
		}
		resp, err := client.SendText(cmd.Context(), flagDevice, req)
		if err != nil {
			return err
		}
		fmt.Printf("Text sent (code=%s message=%s)\n", resp.Code, resp.Message)
		return nil
	},
}

var (
	flagImage        string
	flagImageFile    string
	flagBorder       int
	flagDitherType   string
	flagDitherKernel string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Push image content (296x152 PNG) to the device",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(flagImage) != "" && strings.TrimSpace(flagImageFile) != "" {
			return errors.New("provide either --image or --image-file, not both")
		}
		if strings.TrimSpace(flagImage) == "" && strings.TrimSpace(flagImageFile) == "" {
			return errors.New("provide --image or --image-file")
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		req := quote0.ImageContentRequest{
			Image:        flagImage,
			ImagePath:    flagImageFile,
			Link:         flagLink,
			DitherType:   quote0.DitherType(strings.ToUpper(flagDitherType)),
			DitherKernel: quote0.DitherKernel(strings.ToUpper(flagDitherKernel)),
			TaskKey:      resolveTaskKey(flagTaskKey),
		}
		if cmd.Flags().Changed("border") {
			req.Border = quote0.Ptr(quote0.BorderColor(flagBorder))
		}
		if flagNoRefresh {
			req.RefreshNow = quote0.Bool(false)
		}
		resp, err := client.SendImage(cmd.Context(), flagDevice, req)
		if err != nil {
			return err
		}
		fmt.Printf("Image sent (code=%s message=%s)\n", resp.Code, resp.Message)
		return nil
	},
}

func init() {
	textCmd.Flags().StringVar(&flagTitle, "title", "", "title, first line")
	textCmd.Flags().StringVar(&flagMessage, "message", "", "message, next three lines")
	textCmd.Flags().StringVar(&flagSignature, "signature", "", "signature, bottom-right corner")
	textCmd.Flags().StringVar(&flagIcon, "icon", "", "base64 40x40 PNG icon")
	textCmd.Flags().StringVar(&flagIconFile, "icon-file", "", "path to 40x40 PNG icon")
	textCmd.Flags().StringVar(&flagLink, "link", "", "URL opened by the companion app")
	textCmd.Flags().StringVar(&flagTaskKey, "task-key", "", `task key; "auto" generates a unique one`)
	textCmd.Flags().BoolVar(&flagNoRefresh, "no-refresh", false, "queue without refreshing the screen")

	imageCmd.Flags().StringVar(&flagImage, "image", "", "base64 296x152 PNG")
	imageCmd.Flags().StringVar(&flagImageFile, "image-file", "", "path to 296x152 PNG (base64 encoded internally)")
	imageCmd.Flags().StringVar(&flagLink, "link", "", "URL opened by the companion app")
	imageCmd.Flags().IntVar(&flagBorder, "border", 0, "screen edge color: 0=white, 1=black")
	imageCmd.Flags().StringVar(&flagDitherType, "dither-type", "", "NONE|DIFFUSION|ORDERED (server default: DIFFUSION)")
	imageCmd.Flags().StringVar(&flagDitherKernel, "dither-kernel", "", "FLOYD_STEINBERG, ATKINSON, ... (server default: FLOYD_STEINBERG)")
	imageCmd.Flags().StringVar(&flagTaskKey, "task-key", "", `task key; "auto" generates a unique one`)
	imageCmd.Flags().BoolVar(&flagNoRefresh, "no-refresh", false, "queue without refreshing the screen")
}

// resolveTaskKey expands the "auto" sentinel into a generated key.
func resolveTaskKey(key string) string {
	if strings.EqualFold(strings.TrimSpace(key), "auto") {
		return quote0.NewTaskKey()
	}
	return key
}

func loadBase64(raw, file, label string) (string, error) {
	raw = strings.TrimSpace(raw)
	file = strings.TrimSpace(file)
	switch {
	case raw != "" && file != "":
		return "", fmt.Errorf("provide either --%s or --%s-file, not both", label, label)
	case raw != "":
		return raw, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", nil
	}
}
