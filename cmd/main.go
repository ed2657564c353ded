package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oksasatya/go-user-validation/config"
	"github.com/oksasatya/go-user-validation/internal/application"
	"github.com/oksasatya/go-user-validation/internal/container"
	"github.com/oksasatya/go-user-validation/internal/domain/entity"
	"github.com/oksasatya/go-user-validation/pkg/response"
)

var version = "dev"

var errInvalidRecords = errors.New("one or more records are invalid")

func main() {
	_ = godotenv.Load() // load .env if present

	container.Init(config.Load())

	if err := newRootCmd(container.GetUserService()).Execute(); err != nil {
		if !errors.Is(err, errInvalidRecords) {
			container.GetLogger().WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}

func newRootCmd(svc *application.UserService) *cobra.Command {
	root := &cobra.Command{
		Use:           "usercheck",
		Short:         "Validate user records against the user entity rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(svc), newVersionCmd())
	return root
}

// validateCmd represents the validate command
func newValidateCmd(svc *application.UserService) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate JSON user records, one object per line (stdin when no file is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := json.NewEncoder(cmd.OutOrStdout())
			if len(args) == 0 {
				return validateStream(cmd.Context(), svc, cmd.InOrStdin(), out)
			}
			var failed bool
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				err = validateStream(cmd.Context(), svc, f, out)
				_ = f.Close()
				switch {
				case errors.Is(err, errInvalidRecords):
					failed = true
				case err != nil:
					return fmt.Errorf("read %s: %w", path, err)
				}
			}
			if failed {
				return errInvalidRecords
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func validateStream(ctx context.Context, svc *application.UserService, r io.Reader, out *json.Encoder) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var record, invalid int
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		record++
		u, err := registerLine(ctx, svc, line)
		if err != nil {
			invalid++
			if encErr := out.Encode(response.Error[*entity.User](record, err)); encErr != nil {
				return encErr
			}
			continue
		}
		if err := out.Encode(response.Success(record, u, "valid")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	svc.Logger.WithFields(logrus.Fields{"records": record, "invalid": invalid}).Info("validation finished")
	if invalid > 0 {
		return errInvalidRecords
	}
	return nil
}

func registerLine(ctx context.Context, svc *application.UserService, line []byte) (*entity.User, error) {
	fields, err := svc.DecodeFields(line)
	if err != nil {
		return nil, err
	}
	return svc.RegisterFields(ctx, fields)
}
